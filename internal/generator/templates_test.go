package generator

import (
	"path/filepath"
	"testing"
)

// Miniature platform templates covering every placeholder the drivers patch.

const testPbxproj = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {

/* Begin PBXBuildFile section */
		BLDMAC01 /* main.m in Sources */ = {isa = PBXBuildFile; fileRef = REFMAIN1 /* main.m */; };
/* End PBXBuildFile section */

/* Begin PBXContainerItemProxy section */
		PRXCON01 /* PBXContainerItemProxy */ = {
			isa = PBXContainerItemProxy;
			containerPortal = REFKIT01 /* forgekit.xcodeproj */;
			proxyType = 2;
		};
/* End PBXContainerItemProxy section */

/* Begin PBXFileReference section */
		REFKIT01 /* forgekit.xcodeproj */ = {isa = PBXFileReference; name = forgekit.xcodeproj; path = kit/buildfiles/apple/forgekit.xcodeproj; sourceTree = "<group>"; };
		REFMAIN1 /* main.m */ = {isa = PBXFileReference; path = main.m; sourceTree = "<group>"; };
/* End PBXFileReference section */

/* Begin PBXFrameworksBuildPhase section */
		FRWMAC01 /* Frameworks */ = {
			isa = PBXFrameworksBuildPhase;
			files = (
			);
		};
		FRWIOS01 /* Frameworks */ = {
			isa = PBXFrameworksBuildPhase;
			files = (
			);
		};
/* End PBXFrameworksBuildPhase section */

/* Begin PBXGroup section */
		GRPAST01 /* Assets */ = {
			isa = PBXGroup;
			children = (
			);
			name = Assets;
			path = __ASSET_DIR__;
			sourceTree = "<group>";
		};
		GRPSRC01 /* Source */ = {
			isa = PBXGroup;
			children = (
			);
			name = Source;
			path = __SOURCE_DIR__;
			sourceTree = "<group>";
		};
/* End PBXGroup section */

/* Begin PBXNativeTarget section */
		4F2A1C0926AB3DE100517A42 /* app-mac */ = {
			isa = PBXNativeTarget;
			buildPhases = (
				SRCMAC01 /* Sources */,
				FRWMAC01 /* Frameworks */,
				RSCMAC01 /* Resources */,
			);
			name = "app-mac";
			productName = __DISPLAY_NAME__;
			productReference = PRDMAC01 /* __DISPLAY_NAME__.app */;
		};
		4F2A1C3A26AB3F2A00517A42 /* app-ios */ = {
			isa = PBXNativeTarget;
			buildPhases = (
				SRCIOS01 /* Sources */,
				FRWIOS01 /* Frameworks */,
				RSCIOS01 /* Resources */,
			);
			name = "app-ios";
			productName = __DISPLAY_NAME__;
			productReference = PRDIOS01 /* __DISPLAY_NAME__.app */;
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		PRJROOT1 /* Project object */ = {
			isa = PBXProject;
			targets = (
				4F2A1C0926AB3DE100517A42 /* app-mac */,
				4F2A1C3A26AB3F2A00517A42 /* app-ios */,
			);
		};
/* End PBXProject section */

/* Begin PBXReferenceProxy section */
		RPXLIB01 /* libforgekit.a */ = {
			isa = PBXReferenceProxy;
			fileType = archive.ar;
			remoteRef = PRXCON01 /* PBXContainerItemProxy */;
		};
/* End PBXReferenceProxy section */

/* Begin PBXResourcesBuildPhase section */
		RSCMAC01 /* Resources */ = {
			isa = PBXResourcesBuildPhase;
			files = (
			);
		};
		RSCIOS01 /* Resources */ = {
			isa = PBXResourcesBuildPhase;
			files = (
			);
		};
/* End PBXResourcesBuildPhase section */

/* Begin PBXSourcesBuildPhase section */
		SRCMAC01 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			files = (
			);
		};
		SRCIOS01 /* Sources */ = {
			isa = PBXSourcesBuildPhase;
			files = (
			);
		};
/* End PBXSourcesBuildPhase section */

/* Begin XCBuildConfiguration section */
		CFGMAC01 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				HEADER_SEARCH_PATHS = (
					__KIT_INCLUDE__,
					__APPLE_INCLUDE__,
					__MACOS_INCLUDE__,
				);
				PRODUCT_BUNDLE_IDENTIFIER = __MAC_APP_ID__;
			};
			name = Release;
		};
		CFGIOS01 /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				HEADER_SEARCH_PATHS = (
					__KIT_INCLUDE__,
					__APPLE_INCLUDE__,
					__IOS_INCLUDE__,
				);
				INFOPLIST_KEY_UILaunchStoryboardName = Landscape;
				INFOPLIST_KEY_UIMainStoryboardFile = Landscape;
				INFOPLIST_KEY_UISupportedInterfaceOrientations = UIInterfaceOrientationLandscapeRight;
				INFOPLIST_KEY_UISupportedInterfaceOrientations_iPad = UIInterfaceOrientationLandscapeRight;
				INFOPLIST_KEY_UISupportedInterfaceOrientations_iPhone = UIInterfaceOrientationLandscapeRight;
				PRODUCT_BUNDLE_IDENTIFIER = __IOS_APP_ID__;
			};
			name = Release;
		};
/* End XCBuildConfiguration section */

/* Begin XCConfigurationList section */
		LSTMAC01 /* Build configuration list for PBXNativeTarget "app-mac" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				CFGMAC01 /* Release */,
			);
		};
		LSTIOS01 /* Build configuration list for PBXNativeTarget "app-ios" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				CFGIOS01 /* Release */,
			);
		};
/* End XCConfigurationList section */
	};
	rootObject = PRJROOT1 /* Project object */;
}
`

const testSchemeManagement = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>app-mac.xcscheme_^#shared#^_</key>
	<dict/>
	<key>app-ios.xcscheme_^#shared#^_</key>
	<dict/>
</dict>
</plist>
`

func writeAppleTemplate(t *testing.T, toolkit string) {
	t.Helper()
	apple := filepath.Join(toolkit, "templates", "apple")
	proj := filepath.Join(apple, "app.xcodeproj")
	write(t, filepath.Join(proj, "project.pbxproj"), testPbxproj)

	schemes := filepath.Join(proj, "xcshareddata", "xcschemes")
	write(t, filepath.Join(schemes, "xcschememanagement.plist"), testSchemeManagement)
	write(t, filepath.Join(schemes, "app-mac.xcscheme"),
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Scheme>\n   <BuildableReference\n      BuildableName = \"__DISPLAY_NAME__.app\"\n      BlueprintName = \"app-mac\"\n      ReferencedContainer = \"container:app.xcodeproj\"/>\n</Scheme>\n")
	write(t, filepath.Join(schemes, "app-ios.xcscheme"),
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Scheme>\n   <BuildableReference\n      BuildableName = \"__DISPLAY_NAME__.app\"\n      BlueprintName = \"app-ios\"\n      ReferencedContainer = \"container:app.xcodeproj\"/>\n</Scheme>\n")

	write(t, filepath.Join(apple, "Resources", "icon.txt"), "icon\n")
}

const testSolution = `Microsoft Visual Studio Solution File, Format Version 12.00
Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "__project__", "__project__\__project__.vcxproj", "{F1A2B3C4-0000-0000-0000-000000000001}"
EndProject
`

const testVcxproj = `<?xml version="1.0" encoding="utf-8"?>
<Project DefaultTargets="Build" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <ProjectName>__project__</ProjectName>
    <KitDir>__BUILD_2_KIT__</KitDir>
    <IncludePath>__INCLUDE_DIR__$(IncludePath)</IncludePath>
  </PropertyGroup>
  <ItemGroup>__SOURCE_ENTRIES__
  </ItemGroup>
  <ItemGroup>__HEADER_ENTRIES__
  </ItemGroup>
</Project>
`

const testFilters = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="4.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup>
    <Filter Include="Source Files">
      <UniqueIdentifier>{4FC737F1-C7A5-4376-A066-2A32D752A2FF}</UniqueIdentifier>
    </Filter>__FILTER_ENTRIES__
  </ItemGroup>
  <ItemGroup>__SOURCE_ENTRIES__
  </ItemGroup>
  <ItemGroup>__HEADER_ENTRIES__
  </ItemGroup>
</Project>
`

const testProps = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="4.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <GameName>__project__</GameName>
    <KitDir>__BUILD_2_KIT__</KitDir>
    <GameDir>__ROOT_DIR__</GameDir>
    <AssetDir>__ASSET_DIR__</AssetDir>
  </PropertyGroup>
</Project>
`

func writeWindowsTemplate(t *testing.T, toolkit string) {
	t.Helper()
	windows := filepath.Join(toolkit, "templates", "windows")
	write(t, filepath.Join(windows, "__project__.sln"), testSolution)
	write(t, filepath.Join(windows, "include", "stub.h"), "// stub\n")
	proj := filepath.Join(windows, "__project__")
	write(t, filepath.Join(proj, "__project__.vcxproj"), testVcxproj)
	write(t, filepath.Join(proj, "__project__.vcxproj.filters"), testFilters)
	write(t, filepath.Join(proj, "__project__.props"), testProps)
	write(t, filepath.Join(proj, "__project__.rc"), "// resources\n")
}

const testAndroidMk = `LOCAL_PATH := $(call my-dir)
PROJ_PATH := __SOURCE_PATH__
include $(CLEAR_VARS)
LOCAL_MODULE := main
LOCAL_C_INCLUDES := __KIT_PATH__/include
__EXTRA_INCLUDES__
LOCAL_SRC_FILES := __SOURCE_FILES__
include $(BUILD_SHARED_LIBRARY)
`

const testCMakeLists = `cmake_minimum_required(VERSION 3.12)
project(__TARGET__ VERSION __VERSION__)
set(APP_NAME "__APPNAME__")
set(KIT_DIR "__KITDIR__")
set(ASSET_DIR "__ASSETDIR__")
file(GLOB SOURCES
    __SOURCELIST__
)
__EXTRA_INCLUDES__
`

func writeAndroidTemplate(t *testing.T, toolkit string) {
	t.Helper()
	proj := filepath.Join(toolkit, "templates", "android", "__project__")
	write(t, filepath.Join(proj, "settings.gradle"), "rootProject.name = '__project__'\ninclude ':app'\n")
	write(t, filepath.Join(proj, "app", "build.gradle"),
		"android {\n    namespace '__NAMESPACE__'\n}\ndef assetDir = '__ASSET_DIR__'\n")
	write(t, filepath.Join(proj, "app", "src", "main", "AndroidManifest.xml"),
		"<manifest>\n    <activity android:name=\".__GAME__\" android:screenOrientation=\"__ORIENTATION__\"/>\n</manifest>\n")
	write(t, filepath.Join(proj, "app", "src", "main", "java", "__GAME__.java"),
		"package __NAMESPACE__;\n\npublic class __GAME__ extends KitActivity {\n}\n")
	write(t, filepath.Join(proj, "app", "src", "main", "res", "values", "strings.xml"),
		"<resources>\n    <string name=\"app_name\">__project__</string>\n</resources>\n")
	write(t, filepath.Join(proj, "app", "jni", "forgekit", "Android.mk"),
		"KIT_PATH := __KIT_PATH__\ninclude $(KIT_PATH)/Android.mk\n")
	write(t, filepath.Join(proj, "app", "jni", "forgekit", "config.mk"),
		"# untouched __KIT_PATH__\n")
	write(t, filepath.Join(proj, "app", "jni", "src", "Android.mk"), testAndroidMk)
	write(t, filepath.Join(proj, "app", "jni", "CMakeLists.txt"), testCMakeLists)
}

func writeCMakeTemplate(t *testing.T, toolkit string) {
	t.Helper()
	write(t, filepath.Join(toolkit, "templates", "cmake", "CMakeLists.txt"), testCMakeLists)
}
